// Package mongo connects to MongoDB with the official v2 driver, retrying
// until the deployment answers a ping.
//
//	db, err := mongo.Database(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
