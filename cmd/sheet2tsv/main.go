// sheet2tsv prints one sheet of a workbook, or a delimited text file, as tab
// separated text in the same form polarbars prints it. It is handy for
// checking column names before plotting.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/polarbars"
	"github.com/carbocation/polarbars/table"
)

func main() {
	var filename, sheet, format string

	flag.StringVar(&filename, "filename", "", "Name of the spreadsheet (.xlsx, .xls, .csv, .tsv). May be a gs:// path.")
	flag.StringVar(&sheet, "sheet", "", "Worksheet to print. Defaults to the first sheet.")
	flag.StringVar(&format, "format", "", "Force the input format: xlsx, xls or delimited")
	flag.Parse()

	if filename == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var client *storage.Client
	if polarbars.IsGoogleStoragePath(filename) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	t, err := table.Load(ctx, filename, table.Options{Format: table.Format(format), Sheet: sheet}, client)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println(len(t.Headers()), "Columns")

	if err := t.WriteTSV(os.Stdout); err != nil {
		log.Fatalln(err)
	}
}
