// Package worksheets holds therapeutic homework assigned by therapists to their clients.
package worksheets
