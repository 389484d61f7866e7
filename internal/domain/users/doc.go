// Package users holds platform accounts, sessions and the route access rules for each role.
package users
