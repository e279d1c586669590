package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/shlex"
	"github.com/mattn/go-runewidth"

	"github.com/ascens/ascens/app"
	"github.com/ascens/ascens/dictfile"
	"github.com/ascens/ascens/dictionary"
)

var logpath = flag.String("log", "", "log to file")
var settingsPath = flag.String("settings", "", "settings file to load instead of the default")
var tolerance = flag.Int("tolerance", dictionary.DefaultErrorTolerance, "maximum edit distance for suggestions")
var bestTolerance = flag.Int("best-tolerance", dictionary.DefaultBestErrorTolerance, "edit distance ceiling for the fallback best-match search")

func main() {
	flag.Usage = printUsage
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	dict, err := openDictionary(flag.Arg(0))
	if err != nil {
		exitWithError(err)
	}
	dict.SetErrorTolerance(*tolerance)
	dict.SetBestErrorTolerance(*bestTolerance)

	if err := runShell(dict); err != nil {
		exitWithError(err)
	}
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] [dictionary path]\n", os.Args[0])
	flag.PrintDefaults()
}

// openDictionary binds a dictionary to the word list named on the command
// line, or falls back to the settings file.
func openDictionary(path string) (*dictionary.Dictionary, error) {
	if path != "" {
		backend, err := dictfile.NewLineFile(path)
		if err != nil {
			return nil, err
		}
		dict := dictionary.New()
		dict.Load(backend)
		return dict, nil
	}

	sp := *settingsPath
	if sp == "" {
		var err error
		sp, err = app.SettingsPath()
		if err != nil {
			return nil, err
		}
	}
	settings, err := app.LoadSettings(sp)
	if err != nil {
		return nil, err
	}
	return app.OpenDictionary(settings)
}

func runShell(dict *dictionary.Dictionary) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		// shlex tokenizing so multi-word dictionary entries can be quoted.
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Printf("parse error: %v\n", err)
			fmt.Print("> ")
			continue
		}
		if len(args) > 0 {
			if quit := runCommand(dict, args); quit {
				return nil
			}
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func runCommand(dict *dictionary.Dictionary, args []string) bool {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "check":
		forEachWord(args, func(word string) {
			present, err := dict.Contains(word)
			switch {
			case err != nil:
				fmt.Printf("%s: error: %v\n", word, err)
			case present:
				fmt.Printf("%s: ok\n", word)
			default:
				fmt.Printf("%s: not found\n", word)
			}
		})
	case "suggest":
		forEachWord(args, func(word string) {
			suggestions, err := dict.Suggest(word)
			if err != nil {
				fmt.Printf("%s: error: %v\n", word, err)
				return
			}
			if len(suggestions) == 0 {
				fmt.Printf("%s: no suggestions\n", word)
				return
			}
			fmt.Printf("%s:\n", word)
			printColumns(suggestions)
		})
	case "add":
		forEachWord(args, func(word string) {
			if err := dict.Add(word); err != nil {
				fmt.Printf("%s: error: %v\n", word, err)
			}
		})
	case "remove":
		forEachWord(args, func(word string) {
			if err := dict.Remove(word); err != nil {
				fmt.Printf("%s: error: %v\n", word, err)
			}
		})
	case "count":
		n, err := dict.EntryCount()
		if err != nil {
			fmt.Printf("error: %v\n", err)
		} else {
			fmt.Println(n)
		}
	case "words":
		words, err := dict.Words()
		if err != nil {
			fmt.Printf("error: %v\n", err)
		} else {
			printColumns(words)
		}
	case "help":
		fmt.Println("commands: check W..., suggest W..., add W..., remove W..., count, words, quit")
	case "quit", "exit":
		return true
	default:
		fmt.Printf("unknown command %q (try \"help\")\n", cmd)
	}
	return false
}

func forEachWord(args []string, f func(word string)) {
	if len(args) == 0 {
		fmt.Println("expected at least one word")
		return
	}
	for _, word := range args {
		f(word)
	}
}

// printColumns prints words in rows of aligned columns. Column width uses
// the rendered width of each word, not its rune count, so CJK entries line
// up too.
func printColumns(words []string) {
	const perRow = 4
	width := 0
	for _, w := range words {
		if rw := runewidth.StringWidth(w); rw > width {
			width = rw
		}
	}
	for i, w := range words {
		fmt.Printf("  %s", runewidth.FillRight(w, width))
		if (i+1)%perRow == 0 || i == len(words)-1 {
			fmt.Println()
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
