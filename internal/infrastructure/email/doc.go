// Package email renders the platform's transactional emails and delivers them over SMTP or to the log.
package email
