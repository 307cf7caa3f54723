/*
Package utils contains decorators shared by every application: panic
recovery, logging, savepoints and action tagging.
*/
package utils
