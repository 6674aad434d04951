/*
Package charset implements canonical Unicode code-point range sets: sorted,
non-overlapping, maximally coalesced, with the usual set algebra. Every
terminal symbol in package grammar wraps one of these.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 The glyph authors

*/
package charset
