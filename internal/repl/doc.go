// Package repl is an interactive read-eval-print loop over one realm.
//
// Input is read until the script parser accepts it as a complete program,
// so a function body or object literal may span several lines. Lines that
// start with ':' are session commands rather than script:
//
//	:help              show the command list
//	:realm [kind]      show the realm kind, or replace the realm with a fresh one
//	:bindings [filter] list the registry keys of the current realm
//	:quit              leave the session
package repl
