/*
Package iteratable implements an iteratable container data structure.

Set is a special purpose set type, suitable mainly for implementing
algorithms around closures and fixed-point constructions. These kinds of
algorithms are often more straightforward to describe as set constructions
and operations.

Unusually, Add, Remove and Union are destructive: they mutate the receiver
in place. Difference is the exception and returns a new set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 The glyph authors

*/
package iteratable
