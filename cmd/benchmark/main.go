package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pyhub-apps/pdftext-golang"
)

func main() {
	workers := flag.Int("workers", 0, "Workers for the parallel pass (0 for GOMAXPROCS)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: benchmark [-workers n] <pdf-file>")
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	opts := []pdftext.OpenOption{pdftext.WithValidation(false), pdftext.WithWorkers(*workers)}

	// Warm-up run
	doc, err := pdftext.Open(pdfPath, opts...)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	doc.Close()

	// Benchmark PDF opening
	start := time.Now()
	doc, err = pdftext.Open(pdfPath, opts...)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("=== pdftext Benchmark ===\n")
	fmt.Printf("File: %s\n", pdfPath)
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Open time: %v\n", openTime)

	// Sequential text extraction
	var totalTextLen int
	start = time.Now()
	for i := 1; i <= doc.PageCount(); i++ {
		totalTextLen += len(doc.ExtractPageText(i))
	}
	textTime := time.Since(start)

	fmt.Printf("Text extraction time: %v\n", textTime)
	fmt.Printf("Total text length: %d chars\n", totalTextLen)
	fmt.Printf("Text/sec: %.0f chars/sec\n", float64(totalTextLen)/textTime.Seconds())

	// Parallel text extraction
	start = time.Now()
	texts, err := doc.ExtractAll(context.Background())
	if err != nil {
		log.Fatalf("Failed to extract text: %v", err)
	}
	parallelTime := time.Since(start)

	var parallelLen int
	for _, text := range texts {
		parallelLen += len(text)
	}
	fmt.Printf("Parallel extraction time: %v\n", parallelTime)
	if parallelLen != totalTextLen {
		fmt.Printf("Warning: parallel pass produced %d chars, sequential %d\n", parallelLen, totalTextLen)
	}

	// Word grouping
	var totalWords int
	start = time.Now()
	for _, page := range doc.GetPages() {
		totalWords += len(page.ExtractWords())
	}
	wordTime := time.Since(start)

	fmt.Printf("Word extraction time: %v\n", wordTime)
	fmt.Printf("Total words: %d\n", totalWords)

	// Summary
	totalTime := openTime + textTime + parallelTime + wordTime
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Total processing time: %v\n", totalTime)
	fmt.Printf("Pages/sec: %.2f\n", float64(doc.PageCount())/textTime.Seconds())
	if parallelTime > 0 {
		fmt.Printf("Parallel speedup: %.2fx\n", textTime.Seconds()/parallelTime.Seconds())
	}
}
