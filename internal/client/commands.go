// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/adapter"
	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/models"
)

const qrFileMode = 0o644

func (a *App) protect(ctx context.Context, args []string) error {
	fs := a.flagSet("protect")
	in := fs.String("in", "", "file to protect, - for stdin")
	text := fs.String("text", "", "text to protect")
	pass := fs.String("pass", "", "passphrase")
	out := fs.String("out", "qr.png", "where to write the QR code PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *pass == "" {
		return fmt.Errorf("%w: -pass", ErrMissingArgument)
	}
	if (*in == "") == (*text == "") {
		return fmt.Errorf("%w: exactly one of -in or -text is required", ErrConflictingArgs)
	}

	req := models.ProtectRequest{Passphrase: *pass, Data: []byte(*text)}
	if *in != "" {
		data, err := a.readInput(*in)
		if err != nil {
			return fmt.Errorf("read %s: %w", *in, err)
		}
		req.Data = data
		if *in != "-" {
			req.Filename = filepath.Base(*in)
		}
	}

	result, err := a.adapter.Protect(ctx, req)
	if err != nil {
		return err
	}

	if err = a.writeFile(*out, result.QRCode, qrFileMode); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	fmt.Fprintf(a.stdout, "mode:     %s\n", result.Mode)
	fmt.Fprintf(a.stdout, "envelope: %d bytes\n", result.EnvelopeSize)
	if result.Blob != nil {
		fmt.Fprintf(a.stdout, "blob:     %s\n", result.Blob.Locator)
	}
	fmt.Fprintf(a.stdout, "qr code:  %s\n", *out)
	fmt.Fprintln(a.stdout, result.Text)

	return nil
}

func (a *App) reveal(ctx context.Context, args []string) error {
	fs := a.flagSet("reveal")
	text := fs.String("text", "", "scanned artifact text")
	in := fs.String("in", "", "file holding the scanned text, - for stdin")
	pass := fs.String("pass", "", "passphrase")
	out := fs.String("out", "", "where to write the plaintext (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *pass == "" {
		return fmt.Errorf("%w: -pass", ErrMissingArgument)
	}
	if (*in == "") == (*text == "") {
		return fmt.Errorf("%w: exactly one of -in or -text is required", ErrConflictingArgs)
	}

	scanned := *text
	if *in != "" {
		data, err := a.readInput(*in)
		if err != nil {
			return fmt.Errorf("read %s: %w", *in, err)
		}
		scanned = string(data)
	}

	plaintext, err := a.adapter.Reveal(ctx, models.RevealRequest{
		Text:       strings.TrimSpace(scanned),
		Passphrase: *pass,
	})
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = a.stdout.Write(plaintext)
		return err
	}
	return a.writeFile(*out, plaintext, 0o600)
}

func (a *App) shorten(ctx context.Context, args []string) error {
	fs := a.flagSet("shorten")
	target := fs.String("url", "", "absolute http(s) URL to shorten")
	alias := fs.String("alias", "", "custom alias")
	expires := fs.Duration("expires", 0, "lifetime of the link, e.g. 24h")
	title := fs.String("title", "", "title")
	desc := fs.String("desc", "", "description")
	tags := fs.String("tags", "", "comma-separated tags")
	copyURL := fs.Bool("copy", false, "copy the short URL to the clipboard")
	qr := fs.String("qr", "", "where to write the QR code PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *target == "" {
		return fmt.Errorf("%w: -url", ErrMissingArgument)
	}

	req := models.ShortenRequest{
		OriginalURL: *target,
		CustomAlias: *alias,
		Title:       *title,
		Description: *desc,
		Tags:        splitTags(*tags),
	}
	if *expires > 0 {
		at := a.now().UTC().Add(*expires)
		req.ExpiresAt = &at
	}

	resp, err := a.adapter.Shorten(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, resp.ShortURL)

	if *qr != "" && len(resp.QRCode) > 0 {
		if err = a.writeFile(*qr, resp.QRCode, qrFileMode); err != nil {
			return fmt.Errorf("write %s: %w", *qr, err)
		}
	}

	if *copyURL {
		if err = a.copyToClipboard(resp.ShortURL); err != nil {
			a.logger.Warn().Err(err).Msg("copy to clipboard")
			return nil
		}
		fmt.Fprintln(a.stdout, "copied to clipboard")
	}

	return nil
}

func (a *App) links(ctx context.Context, args []string) error {
	fs := a.flagSet("links")
	limit := fs.Int("limit", 0, "page size (server default when 0)")
	offset := fs.Int("offset", 0, "number of links to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.adapter.ListLinks(ctx, *limit, *offset)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tACTIVE\tCLICKS\tEXPIRES\tURL")
	for _, link := range page.Links {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%d\t%s\t%s\n",
			link.ID, link.Code, link.IsActive, link.ClickCount, formatExpiry(link.ExpiresAt), link.OriginalURL)
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%d-%d of %d\n", min(page.Offset+1, int(page.Total)), page.Offset+len(page.Links), page.Total)
	if page.HasMore {
		fmt.Fprintf(a.stdout, "more: -offset %d\n", page.Offset+len(page.Links))
	}

	return nil
}

func (a *App) link(ctx context.Context, args []string) error {
	fs := a.flagSet("link")
	id := fs.Int64("id", 0, "link id")
	if err := parseWithID(fs, args, id); err != nil {
		return err
	}

	link, err := a.adapter.GetLink(ctx, *id)
	if err != nil {
		return err
	}

	a.printLink(link)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	id := fs.Int64("id", 0, "link id")
	fs.String("title", "", "new title")
	fs.String("desc", "", "new description")
	fs.String("tags", "", "new comma-separated tags")
	if err := parseWithID(fs, args, id); err != nil {
		return err
	}

	var upd adapter.LinkUpdate
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "title":
			upd.Title = &value
		case "desc":
			upd.Description = &value
		case "tags":
			upd.Tags = splitTags(value)
			if upd.Tags == nil {
				upd.Tags = []string{}
			}
		}
	})
	if upd.Title == nil && upd.Description == nil && upd.Tags == nil {
		return fmt.Errorf("%w: one of -title, -desc or -tags", ErrMissingArgument)
	}

	link, err := a.adapter.UpdateLink(ctx, *id, upd)
	if err != nil {
		return err
	}

	a.printLink(link)
	return nil
}

func (a *App) toggle(ctx context.Context, args []string) error {
	fs := a.flagSet("toggle")
	id := fs.Int64("id", 0, "link id")
	if err := parseWithID(fs, args, id); err != nil {
		return err
	}

	resp, err := a.adapter.ToggleLink(ctx, *id)
	if err != nil {
		return err
	}

	state := "disabled"
	if resp.IsActive {
		state = "enabled"
	}
	fmt.Fprintf(a.stdout, "link %d %s\n", resp.ID, state)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.Int64("id", 0, "link id")
	if err := parseWithID(fs, args, id); err != nil {
		return err
	}

	if err := a.adapter.DeleteLink(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "link %d deleted\n", *id)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, v)
	return nil
}

// token signs a bearer token locally with the server's signing key. It is
// meant for self-hosted deployments that have no identity provider.
func (a *App) token(_ context.Context, args []string) error {
	fs := a.flagSet("token")
	owner := fs.String("owner", "", "owner id (token subject)")
	key := fs.String("key", "", "server token signing key")
	issuer := fs.String("issuer", config.DefaultTokenIssuer, "token issuer")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *owner == "" || *key == "" {
		return fmt.Errorf("%w: -owner and -key", ErrMissingArgument)
	}

	token, err := utils.GenerateJWTToken(*issuer, *owner, *ttl, *key)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(a.stdout, token.String())
	return nil
}

func (a *App) printLink(link models.ShortLink) {
	fmt.Fprintf(a.stdout, "id:          %d\n", link.ID)
	fmt.Fprintf(a.stdout, "code:        %s\n", link.Code)
	fmt.Fprintf(a.stdout, "url:         %s\n", link.OriginalURL)
	fmt.Fprintf(a.stdout, "active:      %t\n", link.IsActive)
	fmt.Fprintf(a.stdout, "clicks:      %d\n", link.ClickCount)
	fmt.Fprintf(a.stdout, "expires:     %s\n", formatExpiry(link.ExpiresAt))
	if link.Title != "" {
		fmt.Fprintf(a.stdout, "title:       %s\n", link.Title)
	}
	if link.Description != "" {
		fmt.Fprintf(a.stdout, "description: %s\n", link.Description)
	}
	if len(link.Tags) > 0 {
		fmt.Fprintf(a.stdout, "tags:        %s\n", strings.Join(link.Tags, ", "))
	}
}

func parseWithID(fs *flag.FlagSet, args []string, id *int64) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("%w: -id", ErrMissingArgument)
	}
	return nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func formatExpiry(at *time.Time) string {
	if at == nil {
		return "never"
	}
	return at.UTC().Format(time.RFC3339)
}
