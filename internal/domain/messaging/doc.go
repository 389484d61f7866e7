// Package messaging holds conversations, messages and their receipts, reactions and user blocks.
package messaging
