/*
Package x contains the extensions that make up the sale chain.

Extensions implement common functionality (Handler, Decorator,
Initializer, query registration) and are combined together in the
app package to construct the application.

Every sub-package owns its own buckets and messages. Cross-extension
calls go through exported controller functions rather than shared
state, and authentication is always resolved through an Authenticator
passed to the handler constructor.
*/
package x
