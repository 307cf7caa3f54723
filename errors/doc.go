/*
Package errors implements custom error interfaces for the sale application.

Reuse as many errors from this package as possible and define custom package
errors only when they carry a meaning that a client must be able to tell
apart. x/asset is a good package to look at for a custom error set.

To register a custom error use Register(code, description). To create an
instance of an existing error use ErrXyz.New or errors.Wrap. Code stands for
the ABCI error code, which allows the client to distinguish types of errors
and act accordingly.

A stack trace is attached at the most inner wrap. Once you have an error, use
fmt.Printf/Sprintf to get more context:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
