/*
Package fontsig recognizes TrueType and OpenType fonts embedded in arbitrary
binary data.

Recognition works in two stages. An external scanner searches a buffer for
the magic byte sequences announced by the signature providers of package
`signature`. For every match, the provider validates the sfnt table directory
following the magic and, if it is sound, derives the byte size of the
embedded font:

▪︎ package `binfield` reads named fixed-width integer fields from a byte
slice, driven by a declarative field layout;

▪︎ package `sfntdir` uses it to decode and validate sfnt table directories
and to estimate the size of a font from its table records;

▪︎ package `signature` grades matches (LOW, MEDIUM, HIGH) and hands a
result back to the scanner;

▪︎ package `sfntinfo` decodes tables 'head', 'hhea' and 'maxp' of a
validated candidate for diagnostics.

Maintaining a table of signatures, arbitrating between competing candidates
and writing carved files is left to the scanner.

# Status

Font collections ('ttcf') and WOFF containers are not recognized.

# Links

OpenType font file format:
https://learn.microsoft.com/en-us/typography/opentype/spec/otff

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontsig
