package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"rsgame-bundler/bundle"
)

type (
	Listing struct {
		Schema     bundle.Schema  `json:"schema"`
		Digest     string         `json:"digest"`
		BodyLength int            `json:"body_length"`
		Entries    []bundle.Entry `json:"entries"`
	}
)

func StartListing(cmd ListCmd, stdout io.Writer) error {
	schema, err := parseSchemaFlag(cmd.Schema)
	if err != nil {
		return err
	}
	archive, err := bundle.Open(cmd.Bundle, schema)
	if err != nil {
		return err
	}

	entries := archive.Entries()
	if cmd.JSON {
		listing := Listing{
			Schema:     archive.Schema(),
			Digest:     archive.Digest().String(),
			BodyLength: archive.BodyLength(),
			Entries:    entries,
		}
		bs, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return errors.Wrap(err, "StartListing error marshalling directory")
		}
		_, err = fmt.Fprintln(stdout, string(bs))
		return err
	}

	rows := lo.Map(
		entries,
		func(entry bundle.Entry, _ int) string {
			return fmt.Sprintf("%s\t%d\t%d", entry.Name, entry.Offset, entry.Size)
		},
	)

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "# schema %s, %d entries, %d body bytes\n", archive.Schema(), len(entries), archive.BodyLength())
	fmt.Fprintf(w, "# digest %s\n", archive.Digest())
	fmt.Fprintln(w, "NAME\tOFFSET\tSIZE")
	for _, row := range rows {
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

// writeExtracted creates path exclusively unless force is set, so a file
// appearing after the early existence check is still not overwritten.
func writeExtracted(path string, content []byte, force bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flag, bundle.DefaultFileMode)
	if errors.Is(err, os.ErrExist) {
		return errors.Wrapf(err, `destination "%s" exists, run again with --force to overwrite it`, path)
	}
	if err != nil {
		return errors.Wrapf(err, `writeExtracted error opening "%s"`, path)
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, `writeExtracted error writing "%s"`, path)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, `writeExtracted error closing "%s"`, path)
	}
	return nil
}

// StartExtracting refuses to overwrite an existing file unless Force is set.
func StartExtracting(cmd ExtractCmd, logger *logrus.Logger) error {
	if CheckExistence(cmd.To) && !cmd.Force {
		return errors.Wrapf(
			os.ErrExist,
			`destination "%s" exists, run again with --force to overwrite it`,
			cmd.To,
		)
	}
	schema, err := parseSchemaFlag(cmd.Schema)
	if err != nil {
		return err
	}
	archive, err := bundle.Open(cmd.Bundle, schema)
	if err != nil {
		return err
	}
	content, err := archive.ReadFile(cmd.Name)
	if err != nil {
		return err
	}
	if err := writeExtracted(cmd.To, content, cmd.Force); err != nil {
		return err
	}

	logger.WithFields(
		logrus.Fields{
			"name":  cmd.Name,
			"bytes": len(content),
			"to":    cmd.To,
		},
	).Info("extracted")
	return nil
}
