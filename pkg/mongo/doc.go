// Package mongo manages the MongoDB connection behind the mongostore session backend.
//
// Configuration comes from MONGODB_* environment variables. Connect retries
// until the deployment answers a ping; Collection resolves the configured
// session collection:
//
//	client, err := mongo.Connect(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(context.Background())
//
//	store := mongostore.New[Profile](mongo.Collection(client, cfg))
//
// Failures are wrapped with errors.Join, so errors.Is matches both the
// sentinel and the driver error.
package mongo
