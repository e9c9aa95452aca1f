package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/oskeep/secretstore"
	"github.com/oskeep/secretstore/filestore"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	mode := os.Args[1]
	args := os.Args[2:]

	var err error
	switch mode {
	case "save":
		err = runSave(args)
	case "load":
		err = runLoad(args)
	case "delete":
		err = runDelete(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %s\n", mode)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: secretctl <mode> [options]

Modes:
  save     Store a secret read from stdin
  load     Write a stored secret to stdout
  delete   Delete a stored secret

All modes take -service and -user. By default the platform's native
credential facility is used; pass -db to use a local encrypted database
file instead.

Run 'secretctl <mode> -h' for mode-specific options.
`)
}

// keyOptions are the flags shared by every mode.
type keyOptions struct {
	Service string
	User    string
	DBPath  string
}

func (o *keyOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.Service, "service", "", "Service namespace the secret belongs to (required)")
	fs.StringVar(&o.User, "user", "", "Account name within the service (required)")
	fs.StringVar(&o.DBPath, "db", "", "Use an encrypted database file at this path instead of the OS facility")
}

func (o *keyOptions) validate() error {
	if o.Service == "" {
		return fmt.Errorf("-service is required")
	}
	if o.User == "" {
		return fmt.Errorf("-user is required")
	}
	return nil
}

// openStore returns a handle per the options. The caller closes it.
func openStore(o *keyOptions) (secretstore.Store, error) {
	if o.DBPath != "" {
		fs, err := filestore.Open(o.DBPath)
		if err != nil {
			return secretstore.Store{}, err
		}
		return secretstore.NewStore(fs), nil
	}
	st := secretstore.GetDefault()
	if !st.IsOk() {
		return secretstore.Store{}, fmt.Errorf("no secret storage facility is available on this platform (use -db for file storage)")
	}
	return st, nil
}

func runSave(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	opts := &keyOptions{}
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	// The secret comes from stdin so it never appears in argv or shell
	// history. A single trailing newline from interactive entry is
	// dropped.
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read secret from stdin: %w", err)
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	defer secretstore.Wipe(data)

	value := secretstore.NewSecretValue(data)
	defer value.Destroy()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if !st.Save(opts.Service, opts.User, value) {
		return fmt.Errorf("saving secret failed")
	}
	return nil
}

func runLoad(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	opts := &keyOptions{}
	opts.register(fs)
	newline := fs.Bool("n", false, "Append a newline to the output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	value := st.Load(opts.Service, opts.User)
	if !value.IsOk() {
		return fmt.Errorf("no secret stored for service %q, user %q", opts.Service, opts.User)
	}
	defer value.Destroy()

	if _, err := os.Stdout.Write(value.Data()); err != nil {
		return err
	}
	if *newline {
		fmt.Println()
	}
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	opts := &keyOptions{}
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if !st.Delete(opts.Service, opts.User) {
		return fmt.Errorf("no secret deleted for service %q, user %q", opts.Service, opts.User)
	}
	return nil
}
