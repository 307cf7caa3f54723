/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity stored under the
"_c:<package name>" key. The entity is loaded from the genesis file and can
later be patched by its owner with an update message.
*/
package gconf
