package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	listPath := os.Args[1]
	command := os.Args[2]
	args := os.Args[3:]

	switch command {
	case "add", "remove":
		if len(args) == 0 {
			fmt.Printf("Error: %s requires at least one word\n", command)
			os.Exit(1)
		}
		list := readList(listPath)
		for _, arg := range args {
			if command == "remove" {
				if !list.Remove(arg) {
					fmt.Printf("Not in list: %s\n", arg)
					continue
				}
				fmt.Printf("Removed: %s\n", arg)
				continue
			}
			word, classField, _ := strings.Cut(arg, ":")
			class, err := decompound.ParseClass(classField)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error adding word '%s': %v\n", arg, err)
				os.Exit(1)
			}
			list.Add(word, class)
			fmt.Printf("Added: %s (%s)\n", word, class)
		}
		writeList(listPath, list)
		fmt.Printf("Total words: %d\n", list.Len())

	case "contains":
		if len(args) == 0 {
			fmt.Println("Error: contains requires a word")
			os.Exit(1)
		}
		dict := openDictionary(listPath)
		defer dict.Close()
		word := strings.ToLower(args[0])
		if entry, ok := dict.Lookup(word); ok {
			fmt.Printf("'%s' exists in dictionary (%s)\n", word, entry.Class)
		} else {
			fmt.Printf("'%s' NOT in dictionary\n", word)
			dict.Close()
			os.Exit(1)
		}

	case "segment":
		if len(args) == 0 {
			fmt.Println("Error: segment requires at least one word")
			os.Exit(1)
		}
		dict := openDictionary(listPath)
		defer dict.Close()
		seg := decompound.NewSegmenter(dict)
		for _, word := range args {
			fmt.Printf("%s: %s\n", word, strings.Join(seg.Decompound(word), " + "))
		}

	case "compile":
		if len(args) != 1 {
			fmt.Println("Error: compile requires an output path")
			os.Exit(1)
		}
		list := readList(listPath)
		var buf bytes.Buffer
		if err := decompound.Compile(list, &buf); err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling FST: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing FST: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("FST written to %s: %d words, %d bytes\n", args[0], list.Len(), buf.Len())

	case "stats":
		dict := openDictionary(listPath)
		defer dict.Close()
		counts := make(map[decompound.Class]int)
		if err := dict.Entries(func(e decompound.Entry) error {
			counts[e.Class]++
			return nil
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading dictionary: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dictionary: %s\n", listPath)
		fmt.Printf("Word count: %d\n", dict.Len())
		for c := decompound.ClassNone; c <= decompound.ClassParticle; c++ {
			if counts[c] > 0 {
				fmt.Printf("  %-10s %d\n", c, counts[c])
			}
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func readList(path string) *decompound.WordList {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return decompound.NewWordList()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading word list: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	list, err := decompound.ReadWordList(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading word list: %v\n", err)
		os.Exit(1)
	}
	return list
}

func writeList(path string, list *decompound.WordList) {
	var buf bytes.Buffer
	if _, err := list.WriteTo(&buf); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing word list: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing word list: %v\n", err)
		os.Exit(1)
	}
}

// openDictionary compiles a .txt word list in memory and memory-maps
// anything else as a compiled FST.
func openDictionary(path string) *decompound.Dictionary {
	var dict *decompound.Dictionary
	var err error
	if strings.HasSuffix(path, ".txt") {
		dict, err = decompound.Build(readList(path))
	} else {
		dict, err = decompound.Open(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	return dict
}

func printUsage() {
	fmt.Println("Usage: dictmgr <words.txt|words.fst> <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <word[:class]> [...]  Add words to a word list")
	fmt.Println("  remove <word> [word...]   Remove words from a word list")
	fmt.Println("  contains <word>           Check if word exists")
	fmt.Println("  segment <word> [word...]  Split words into fragments")
	fmt.Println("  compile <out.fst>         Compile a word list into an FST")
	fmt.Println("  stats                     Show dictionary statistics")
}
