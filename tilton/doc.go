/*

The tilton package implements the Tilton macro language. Text is copied
unchanged except for invocations which are replaced by their values. An
invocation is written as

	<~name~arg1~arg2~...~>

The name and the arguments are themselves text which may contain further
invocations. These are evaluated lazily: an argument is evaluated the first
time its value is needed and the value is remembered for any later use.

Within the definition of a macro the arguments of the invocation are
referred to by number: <~1~> is the value of the first argument and <~0~>
the name. An argument can be given a new value with <~1~value~>.

If the text of an argument needs to contain a tilde separator then the
invocation can be opened with more tildes, the separators and the close
must then have the same number:

	<~~define~~x~~a~b~~>

Some operations are provided natively; these are the builtins. Any other
name is looked up in the macro table. Builtins take precedence.

You construct a Processor with New and then call Eval (or Expand) with the
text to be evaluated. Any error ends the evaluation and is returned as an
*Error which describes where the failure happened.

*/
package tilton
