/*
Package template renders Baxter response templates.

Two layers compose: Format fills plain {placeholder} slots from values an action
computed (the hour, a song name), and Engine.Render evaluates a single optional
conditional block against the settings source:

	Hallo%if_name%, {name}%if_name_end%!

renders as "Hallo, Ada!" when the "name" setting exists and as "Hallo!" when it
does not. Only the first %if_<NAME>% ... %if_<NAME>_end% pair is evaluated.
Templates containing %else% or %else_end% are returned untouched when the
condition is false; else branches are not supported.
*/
package template
