// Package cmd/storefront provides the global Storefront framework CLI.
//
// Install once globally:
//
//	go install github.com/shashiranjanraj/storefront/cmd/storefront@latest
//
// Then from ANY project directory that uses the Storefront framework:
//
//	storefront serve           # start server
//	storefront migrate         # run migrations
//	storefront migrate:rollback
//	storefront migrate:status
//	storefront seed            # seed data
//	storefront route:list      # list API routes
//
// The CLI detects whether it is running:
//
//	a) Inside the storefront framework repo itself → uses direct Go imports
//	b) Inside a user project → delegates to `go run . <command>`
//
// User projects just need this in their main.go:
//
//	import "github.com/shashiranjanraj/storefront/pkg/app"
//	func main() { app.Run() }
package main
