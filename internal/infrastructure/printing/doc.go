// Package printing composes single-page PDF documents and stores them.
//
// This package contains:
// - ResourcePool holding the fonts and background image loaded at startup
// - PageComposer drawing a background, a title block and a body block with tdewolff/canvas
// - PageValidator re-reading output with pdfcpu
// - DocumentStore writing bytes to an ObjectStore and metadata to a repository
//
// Example usage:
//
//	pool, err := LoadResources(ctx, ResourceConfig{
//	    TitleFont:  "builtin:gobold",
//	    BodyFont:   "builtin:goregular",
//	    Background: "/app/assets/background.png",
//	}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	composer, err := NewPageComposer(pool, ComposerConfig{Logger: logger})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := composer.Compose(ctx, &ComposeRequest{
//	    Title: "Report",
//	    Body:  "First paragraph.\nSecond paragraph.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes\n", len(result.PDFData))
package printing
