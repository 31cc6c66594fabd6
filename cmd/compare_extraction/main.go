package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/pdftext-golang"
)

type backend struct {
	name string
	open func(string, ...pdftext.OpenOption) (pdftext.Document, error)
}

var backends = []backend{
	{"pdfcpu", pdftext.OpenWithPDFCPU},
	{"ledongthuc", pdftext.OpenWithLedongthuc},
	{"dslipak", pdftext.OpenWithDslipak},
}

func main() {
	pageNum := flag.Int("page", 1, "Page to compare (1-based)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: compare_extraction [-page n] <pdf-file>")
		os.Exit(1)
	}
	pdfPath := flag.Arg(0)

	results := make(map[string]string, len(backends))
	for _, b := range backends {
		doc, err := b.open(pdfPath, pdftext.WithValidation(false))
		if err != nil {
			fmt.Printf("%s: failed to open: %v\n", b.name, err)
			continue
		}

		fmt.Printf("%s extraction:\n", b.name)
		fmt.Printf("  Pages: %d\n", doc.PageCount())

		page, err := doc.GetPage(*pageNum - 1)
		if err != nil {
			fmt.Printf("  %v\n", err)
			doc.Close()
			continue
		}
		bbox := page.GetBBox()
		fmt.Printf("  Page %d:\n", *pageNum)
		fmt.Printf("    Bbox: (%.2f, %.2f, %.2f, %.2f)\n", bbox.X0, bbox.Y0, bbox.X1, bbox.Y1)
		fmt.Printf("    Rotation: %d\n", page.GetRotation())
		fmt.Printf("    Content bytes: %d\n", len(page.Content()))

		words := page.ExtractWords()
		fmt.Printf("    Words: %d\n", len(words))
		for i, w := range words {
			if i >= 5 {
				break
			}
			fmt.Printf("      %d. %q at (%.2f, %.2f, %.2f, %.2f)\n", i+1, w.Text, w.BBox.X0, w.BBox.Y0, w.BBox.X1, w.BBox.Y1)
		}

		text := page.ExtractText()
		fmt.Printf("    Extracted text: %q\n", text)
		results[b.name] = text
		doc.Close()
	}

	if len(results) < 2 {
		log.Fatal("need at least two backends to compare")
	}

	fmt.Println("\nComparison:")
	ref := backends[0].name
	if _, ok := results[ref]; !ok {
		for name := range results {
			ref = name
			break
		}
	}
	for _, b := range backends {
		text, ok := results[b.name]
		if !ok || b.name == ref {
			continue
		}
		if text == results[ref] {
			fmt.Printf("  %s matches %s\n", b.name, ref)
		} else {
			fmt.Printf("  %s differs from %s (%d vs %d bytes)\n", b.name, ref, len(text), len(results[ref]))
		}
	}
}
