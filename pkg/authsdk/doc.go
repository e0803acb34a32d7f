// Package authsdk provides a typed Go client for the identity service along
// with the request and response types shared between the service's HTTP
// layer and its consumers.
package authsdk
