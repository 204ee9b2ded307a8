// Package views provides the basic view kinds composed by applications:
// Text, Button and Stack.
//
// Views are created from a Factory, configured with Props, and added to
// the tree with Compose. Props ending in Signal keep a property in sync
// with a signal for as long as the view is alive.
//
//	title := views.NewText(f, "Hello", views.TextSize(24))
//	err := views.NewStack(f, views.Orient(views.Vertical)).With(c, func(c *compose.Composer) error {
//	    return views.Compose(c, title, views.NewButton(f, onPress).Label("Go"))
//	})
package views
