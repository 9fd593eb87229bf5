package redisstore_test

import "net/http"

type cookieJar map[string]*http.Cookie

func (j cookieJar) Cookie(name string) (*http.Cookie, error) {
	if c, ok := j[name]; ok {
		return c, nil
	}
	return nil, http.ErrNoCookie
}

func parseCookie(header string) (*http.Cookie, error) {
	return http.ParseSetCookie(header)
}
