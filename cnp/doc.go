/*
Package cnp implements the Clustered Nonterminal Parser: a GLL-family
general-CFG parser that consumes Unicode code points and produces a Binary
Subtree Representation (BSR) of every derivation, via a Call Return Forest
(CRF) and a descriptor work queue.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 The glyph authors

*/
package cnp
