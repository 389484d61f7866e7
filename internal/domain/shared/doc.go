// Package shared contains contracts used by more than one domain package.
package shared
