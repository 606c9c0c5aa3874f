/*

The macros package holds the table of named macros used by the tilton
macro processor. You construct the Table object with New and then Install,
Lookup and Delete macros by name. The names and values are text.Buffers
and the names are matched byte for byte.

Optionally macro directories can be given. If a macro is not found in the
table and macro directories have been given they are searched by Find and
if a file is found with the same name as the macro (possibly with a suffix)
then the contents of that file are used as the value. Any newly found
macros are added to the table for further use.

*/
package macros
