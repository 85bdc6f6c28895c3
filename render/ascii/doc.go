// Package ascii renders built maps as text for terminals, logs and tool output.
//
// Each cell maps to one glyph:
//
//	#  fence        .  grass        =  path
//	T  tree         A  pine         *  bush
//	o  rock         "  flowers      @  the actor
//
// Hotspot footprints use the upper-cased first letter of the hotspot name.
package ascii
