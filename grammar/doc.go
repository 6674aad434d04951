/*
Package grammar models a context-free grammar as an interned symbol table
and a production store, and computes FIRST/FOLLOW sets over it by
fixed-point iteration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 The glyph authors

*/
package grammar
