// Package mongo opens a MongoDB client with the v2 driver, retrying until
// the deployment answers a ping.
package mongo
