// Package events defines the domain events published by the services and the bus they travel on.
package events
