package main

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeffrom/logentries"
	"github.com/jeffrom/logentries/client"
	"github.com/jeffrom/logentries/config"
	"github.com/jeffrom/logentries/internal"
)

func newWriteCmd(v *viper.Viper, dialer client.Dialer) *cobra.Command {
	var levelFlag string

	cmd := &cobra.Command{
		Use:     "write [messages]",
		Aliases: []string{"w"},
		Short:   "Write messages to the log",
		Long: `Write each argument as a record. With no arguments, each line read from
stdin is written as a record.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.FromViper(v)
			if err != nil {
				return err
			}
			internal.Debugf(conf, "%s", conf)

			level, err := logentries.ParseLevel(levelFlag)
			if err != nil {
				return err
			}
			return doWrite(conf, dialer, level, cmd.InOrStdin(), args)
		},
	}

	cmd.Flags().StringVarP(&levelFlag, "level", "l", logentries.LevelInfo.String(),
		"severity `LEVEL` of the records")
	return cmd
}

func doWrite(conf *config.Config, dialer client.Dialer, level logentries.Level, in io.Reader, args []string) error {
	l, err := logentries.New(conf)
	if err != nil {
		return err
	}
	if dialer != nil {
		l.SetDialer(dialer)
	}
	defer func() {
		internal.LogError(errors.Wrap(l.Close(), "closing connection"))
	}()

	if !l.Client().EnsureOpen() {
		return errors.Wrapf(client.ErrNotConnected, "connecting to %s", client.Resolve(conf))
	}

	if len(args) > 0 {
		for _, arg := range args {
			l.Log(level, arg)
		}
		return nil
	}

	if f, ok := in.(*os.File); ok {
		// nothing piped in
		stat, err := f.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return errors.New("no messages given")
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		l.Log(level, scanner.Text())
	}
	return errors.Wrap(scanner.Err(), "reading input")
}
