// Command inkwell is the authoring client for the content server. Documents
// are Markdown files with YAML front matter; the tool renders them to HTML
// and drives the HTTP API.
//
// Usage:
//
//	inkwell [-api URL] <post|page> <command> [arguments]
//
// Commands:
//
//	add <file>            create a draft from a Markdown file
//	list                  list all entries of the kind, drafts included
//	view <uid>            show a single entry
//	update <uid> <file>   replace title and body from a Markdown file
//	publish <uid>         mark an entry as published
//	unpublish <uid>       revert an entry to draft
//	delete <uid>          remove an entry
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/inkwell-blog/inkwell/internal/markup"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

const defaultAPIBase = "http://127.0.0.1:3030/api/v1"

func main() {
	fs := flag.NewFlagSet("inkwell", flag.ExitOnError)
	apiBase := fs.String("api", "", "API base URL (default: $INKWELL_API or "+defaultAPIBase+")")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: inkwell [-api URL] <post|page> <add|list|view|update|publish|unpublish|delete> [arguments]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	base := *apiBase
	if base == "" {
		base = os.Getenv("INKWELL_API")
	}
	if base == "" {
		base = defaultAPIBase
	}

	args := fs.Args()
	if len(args) < 2 {
		fs.Usage()
		os.Exit(2)
	}

	kind, err := types.ParseKind(args[0])
	if err != nil {
		fatalf("unknown kind %q (want post or page)", args[0])
	}

	client := NewClient(base)
	if err := dispatch(context.Background(), client, kind, args[1], args[2:]); err != nil {
		fatalf("%v", err)
	}
}

func dispatch(ctx context.Context, client *Client, kind types.Kind, command string, args []string) error {
	switch command {
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: inkwell %s add <file>", kind)
		}
		return runAdd(ctx, client, kind, args[0])
	case "list":
		return runList(ctx, client, kind)
	case "view":
		if len(args) != 1 {
			return fmt.Errorf("usage: inkwell %s view <uid>", kind)
		}
		post, err := client.View(ctx, kind, args[0])
		if err != nil {
			return err
		}
		return printJSON(post)
	case "update":
		if len(args) != 2 {
			return fmt.Errorf("usage: inkwell %s update <uid> <file>", kind)
		}
		return runUpdate(ctx, client, kind, args[0], args[1])
	case "publish":
		if len(args) != 1 {
			return fmt.Errorf("usage: inkwell %s publish <uid>", kind)
		}
		return runSetPublished(ctx, client, kind, args[0], true)
	case "unpublish":
		if len(args) != 1 {
			return fmt.Errorf("usage: inkwell %s unpublish <uid>", kind)
		}
		return runSetPublished(ctx, client, kind, args[0], false)
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: inkwell %s delete <uid>", kind)
		}
		post, err := client.Delete(ctx, kind, args[0])
		if err != nil {
			return err
		}
		return printJSON(post)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runAdd(ctx context.Context, client *Client, kind types.Kind, path string) error {
	payload, err := loadDocument(kind, path)
	if err != nil {
		return err
	}
	post, err := client.Create(ctx, *payload)
	if err != nil {
		return err
	}
	return printJSON(post)
}

func runList(ctx context.Context, client *Client, kind types.Kind) error {
	metas, err := client.ListMeta(ctx, kind)
	if err != nil {
		return err
	}
	return printJSON(metas)
}

func runUpdate(ctx context.Context, client *Client, kind types.Kind, uid, path string) error {
	payload, err := loadDocument(kind, path)
	if err != nil {
		return err
	}
	changes := types.UpdatePost{
		Title: &payload.Title,
		Body:  &payload.Body,
	}
	post, err := client.Update(ctx, kind, uid, changes)
	if err != nil {
		return err
	}
	return printJSON(post)
}

func runSetPublished(ctx context.Context, client *Client, kind types.Kind, uid string, published bool) error {
	post, err := client.Update(ctx, kind, uid, types.UpdatePost{Published: &published})
	if err != nil {
		return err
	}
	return printJSON(post)
}

// loadDocument reads a Markdown file and turns it into a creation payload.
// The kind argument wins over any kind declared in the front matter.
func loadDocument(kind types.Kind, path string) (*types.NewPost, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := markup.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Meta.Title == "" {
		return nil, fmt.Errorf("%s: front matter is missing a title", path)
	}

	payload := &types.NewPost{
		Title: doc.Meta.Title,
		Kind:  kind.String(),
		Body:  doc.HTML,
		Tags:  doc.Meta.Tags,
	}
	if doc.Meta.Summary != "" {
		summary := doc.Meta.Summary
		payload.Summary = &summary
	}
	return payload, nil
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "inkwell: "+format+"\n", args...)
	os.Exit(1)
}
