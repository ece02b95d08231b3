// Package filesystem connects local folders to Paperless-ngx.
//
// Watcher turns a directory into a consume folder: files created in it are
// reported once their writes have settled. LocalPath resolves file://
// references used in batch item files.
package filesystem
