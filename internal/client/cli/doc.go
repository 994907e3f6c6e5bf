// Package cli provides the interactive photosync command-line client.
//
// NewApp wires configuration, the local state database, the encrypted
// credential vault, the media library and the upload service, then Run
// starts a REPL that lets the user list recent media, toggle a selection and
// upload it. Progress reported by the upload service is printed as it
// happens.
package cli
