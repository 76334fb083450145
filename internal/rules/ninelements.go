package rules

// NineElements returns the 9elements property order: inheritance first,
// then position and layout, display, clipping, animation, box model,
// background, typography and finally generated content.
func NineElements() *Table {
	return NewTable(DefaultTable,
		// Inheritance and mixins.
		Inclusion,

		// Position and layout.
		Literal("position"),
		Literal("z-index"),
		Literal("top"),
		Literal("bottom"),
		Literal("left"),
		Literal("right"),
		Literal("float"),
		Literal("clear"),
		MustPattern(`flex`),

		// Display and visibility.
		Literal("display"),
		Literal("visibility"),
		Literal("opacity"),
		Literal("transform"),

		// Clipping.
		MustPattern(`overflow`),
		MustPattern(`clip`),

		// Animation.
		Literal("animation"),
		Literal("transition"),

		// Box model.
		Literal("margin"),
		Literal("margin-top"),
		Literal("margin-right"),
		Literal("margin-bottom"),
		Literal("margin-left"),
		Literal("box-shadow"),
		Literal("border"),
		Literal("border-top"),
		Literal("border-right"),
		Literal("border-bottom"),
		Literal("border-left"),
		Literal("border-color"),
		Literal("border-top-color"),
		Literal("border-right-color"),
		Literal("border-bottom-color"),
		Literal("border-left-color"),
		Literal("border-style"),
		Literal("border-top-style"),
		Literal("border-right-style"),
		Literal("border-bottom-style"),
		Literal("border-left-style"),
		Literal("border-radius"),
		Literal("border-top-left-radius"),
		Literal("border-top-right-radius"),
		Literal("border-bottom-right-radius"),
		Literal("border-bottom-left-radius"),
		Literal("box-sizing"),
		Literal("width"),
		Literal("min-width"),
		Literal("max-width"),
		Literal("height"),
		Literal("min-height"),
		Literal("max-height"),
		Literal("padding"),
		Literal("padding-top"),
		Literal("padding-right"),
		Literal("padding-bottom"),
		Literal("padding-left"),

		// Background.
		Literal("background"),
		Literal("background-color"),
		Literal("background-image"),
		Literal("background-repeat"),
		Literal("background-position"),
		Literal("background-size"),
		Literal("cursor"),

		// Typography.
		Literal("font-family"),
		Literal("font-size"),
		Literal("line-height"),
		Literal("font-weight"),
		Literal("font-style"),
		Literal("text-align"),
		Literal("text-indent"),
		Literal("text-transform"),
		Literal("text-decoration"),
		Literal("text-rendering"),
		Literal("text-shadow"),
		Literal("text-overflow"),
		Literal("word-spacing"),
		Literal("letter-spacing"),
		Literal("white-space"),
		Literal("color"),

		// Others.
		Literal("content"),
	)
}
