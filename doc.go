/*
Package glyph is a compiler-compiler toolbox: it builds SRNGLR parse tables
from an LR(1) grammar model and runs a Clustered Nonterminal Parser (CNP)
over Unicode code-point input, producing a Binary Subtree Representation
(BSR) of every derivation via a Call Return Forest (CRF).

Package structure is as follows:

■ charset: canonical, non-overlapping Unicode code-point range sets, the
terminal alphabet every other package builds on.

■ grammar: symbols, productions, FIRST/FOLLOW sets over a grammar built from
a production store.

■ srnglr: LR(1) items, itemsets, CLOSURE/GOTO and the SRNGLR multi-action
table builder, plus a table-driven GLR verifier used to cross-check
acceptance against the CNP.

■ cnp: the Clustered Nonterminal Parser driver, its Call Return Forest and
its Binary Subtree Representation store.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 The glyph authors

*/
package glyph
