package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	pdflog "github.com/pdfcpu/pdfcpu/pkg/log"

	"github.com/pyhub-apps/pdftext-golang"
)

func main() {
	var (
		pdfPath   = flag.String("pdf", "", "Path to PDF file")
		library   = flag.String("lib", "auto", "PDF library to use (auto, pdfcpu, ledongthuc, dslipak)")
		pageNum   = flag.Int("page", 0, "Page to extract (1-based, 0 for all pages)")
		region    = flag.String("region", "", "Region x,y,width,height in user space")
		search    = flag.String("search", "", "Regular expression to search for")
		password  = flag.String("password", "", "Password for encrypted documents")
		normalize = flag.Bool("nfkc", false, "Apply NFKC normalization")
		artifacts = flag.Bool("artifacts", false, "Keep text marked as /Artifact")
		workers   = flag.Int("workers", 0, "Pages extracted at once (0 for GOMAXPROCS)")
		verbose   = flag.Bool("v", false, "Log interpreter diagnostics")
	)
	flag.Parse()

	if *pdfPath == "" && flag.NArg() > 0 {
		*pdfPath = flag.Arg(0)
	}
	if *pdfPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if *verbose {
		pdflog.SetDefaultDebugLogger()
		pdflog.SetDefaultInfoLogger()
	}

	openOpts := []pdftext.OpenOption{pdftext.WithWorkers(*workers), pdftext.WithValidation(false)}
	if *password != "" {
		openOpts = append(openOpts, pdftext.WithPassword(*password))
	}

	var (
		doc pdftext.Document
		err error
	)
	switch *library {
	case "auto":
		doc, err = pdftext.Open(*pdfPath, openOpts...)
	case "pdfcpu":
		doc, err = pdftext.OpenWithPDFCPU(*pdfPath, openOpts...)
	case "ledongthuc":
		doc, err = pdftext.OpenWithLedongthuc(*pdfPath, openOpts...)
	case "dslipak":
		doc, err = pdftext.OpenWithDslipak(*pdfPath, openOpts...)
	default:
		log.Fatalf("Unknown library: %s", *library)
	}
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	textOpts := []pdftext.TextExtractionOption{
		pdftext.WithUnicodeNormalization(*normalize),
		pdftext.WithMarkedContentFilter(!*artifacts),
	}

	pages := []int{*pageNum}
	if *pageNum == 0 {
		pages = pages[:0]
		for i := 1; i <= doc.PageCount(); i++ {
			pages = append(pages, i)
		}
	}

	switch {
	case *search != "":
		re, err := regexp.Compile(*search)
		if err != nil {
			log.Fatalf("Invalid pattern: %v", err)
		}
		for _, p := range pages {
			for _, m := range doc.SearchPage(p, re, textOpts...) {
				c := m.Coordinates
				fmt.Printf("page %d: %q at (%.2f, %.2f, %.2f, %.2f)\n", m.Page, m.Text, c[0], c[1], c[2], c[3])
			}
		}

	case *region != "":
		x, y, w, h, err := parseRegion(*region)
		if err != nil {
			log.Fatalf("Invalid region: %v", err)
		}
		for _, p := range pages {
			fmt.Printf("=== Page %d ===\n", p)
			fmt.Println(doc.ExtractRegionText(p, x, y, w, h, textOpts...))
		}

	case *pageNum == 0:
		texts, err := doc.ExtractAll(context.Background(), textOpts...)
		if err != nil {
			log.Fatalf("Failed to extract text: %v", err)
		}
		for i, text := range texts {
			fmt.Printf("=== Page %d ===\n", i+1)
			fmt.Println(text)
		}

	default:
		if *pageNum > doc.PageCount() {
			log.Fatalf("Page %d out of range, document has %d pages", *pageNum, doc.PageCount())
		}
		fmt.Println(doc.ExtractPageText(*pageNum, textOpts...))
	}
}

// parseRegion reads "x,y,width,height"
func parseRegion(s string) (x, y, w, h float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected x,y,width,height, got %q", s)
	}
	var v [4]float64
	for i, part := range parts {
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return v[0], v[1], v[2], v[3], nil
}
