// Package email sends transactional HTML email.
//
// EmailSender is implemented by three transports selected through Config.Driver:
//
//   - "smtp" delivers through an SMTP relay with gopkg.in/gomail.v2
//   - "postmark" uses the Postmark transactional API
//   - "dev" writes every message to a directory as .html and .json files
//
// Message bodies are built from templ components, see the templates
// subpackage.
package email
