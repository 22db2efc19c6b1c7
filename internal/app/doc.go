// Package app contains the core application logic: it discovers recipe
// documents, loads them through a config.Loader, renders each program to its
// canonical tree and then prints, checks or updates those trees. It is
// decoupled from any specific entrypoint like a CLI.
package app
