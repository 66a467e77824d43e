package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/playground"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/project"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/util"
)

func assembleFile(filePath string) *assembler.AssembledResult {
	b, e := os.ReadFile(filePath)
	if e != nil {
		log.Fatalf("Could not read file %s: %v", filePath, e)
	}

	res := assembler.Assemble(string(b))
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, project.FormatDiagnostic(filePath, d))
	}
	if res.HasErrors() {
		os.Exit(1)
	}
	return res
}

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "languageServer" {
		if len(os.Args) >= 3 && os.Args[2] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()
	} else if len(os.Args) >= 3 && len(os.Args) <= 4 && os.Args[1] == "assemble" {
		filePath := os.Args[2]
		outPath := strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".bin"
		if len(os.Args) == 4 {
			outPath = os.Args[3]
		}

		res := assembleFile(filePath)
		if e := os.WriteFile(outPath, assembler.WordsToBytes(res.Words), 0644); e != nil {
			log.Fatalf("Could not write %s: %v", outPath, e)
		}
	} else if len(os.Args) == 3 && os.Args[1] == "list" {
		res := assembleFile(os.Args[2])
		fmt.Print(res.Listing())
	} else if len(os.Args) >= 2 && len(os.Args) <= 3 && os.Args[1] == "build" {
		configPath := project.DefaultConfigPath
		if len(os.Args) == 3 {
			configPath = os.Args[2]
		}

		conf, e := project.LoadConfig(configPath)
		if e != nil {
			log.Fatalf("Could not load project config: %v", e)
		}
		report := project.Build(conf)
		for _, file := range report.Files {
			fmt.Print(file.Output)
		}
		if conf.ReportFile() != "" {
			if e := report.Save(conf.ReportFile()); e != nil {
				log.Fatalf("Could not save report: %v", e)
			}
		}
		fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
		if !report.OK() {
			os.Exit(1)
		}
	} else if len(os.Args) >= 2 && len(os.Args) <= 3 && os.Args[1] == "playground" {
		addr := playground.DefaultAddress
		if len(os.Args) == 3 {
			addr = os.Args[2]
		}
		log.Fatal(playground.ListenAndServe(addr))
	} else if len(os.Args) == 1 {
		// run as language server but in tcp mode so it can be remotely debugged
		languageServer.ListenAndServeTCP(languageServer.DefaultTCPAddress)
	} else {
		log.Fatalln("Invalid arguments:", os.Args)
	}
}
