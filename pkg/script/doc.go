// Package script embeds a Lua interpreter for profile serialize/deserialize
// scripts (spec.md §4.C). One *lua.LState is owned per worker goroutine;
// hosts are never shared across goroutines.
package script
