/*
 * p16sim - Interactive pipeline simulator console
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"p16sim/assembler"
	"p16sim/command"
	"p16sim/config"
	"p16sim/pipeline"
	"p16sim/util/logger"
)

var Logger *slog.Logger

func main() {
	optAsm := getopt.StringLong("asm", 'a', "", "Assembly program to load at startup")
	optConfig := getopt.StringLong("config", 'c', "", "Session configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			os.Stderr.WriteString("unable to create log file: " + err.Error() + "\n")
			os.Exit(1)
		}
		file = f
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	debug := false
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("p16sim started")

	core := pipeline.New()
	core.SetLogger(Logger)

	if *optConfig != "" {
		cfgFile, err := os.Open(*optConfig)
		if err != nil {
			Logger.Error("configuration file can't be opened: " + err.Error())
			os.Exit(1)
		}
		directives, errs := config.Parse(cfgFile)
		cfgFile.Close()
		for _, e := range errs {
			Logger.Warn(e.Error())
		}
		if logPath := config.Apply(core, directives); logPath != "" && file == nil {
			if f, err := os.Create(logPath); err == nil {
				Logger.Info("switching log output to " + logPath)
				Logger = slog.New(logger.NewHandler(f, &slog.HandlerOptions{Level: programLevel}, &debug))
				slog.SetDefault(Logger)
				core.SetLogger(Logger)
			}
		}
	}

	if *optAsm != "" {
		src, err := os.ReadFile(*optAsm)
		if err != nil {
			Logger.Error("assembly file can't be read: " + err.Error())
			os.Exit(1)
		}
		words, sentinel, errs := assembler.Assemble(string(src))
		if len(errs) != 0 {
			for _, e := range errs {
				Logger.Error(e.Error())
			}
			os.Exit(1)
		}
		core.LoadProgram(assembler.Compact(words, sentinel))
		Logger.Info("loaded " + *optAsm)
	}

	command.ConsoleReader(core)

	Logger.Info("p16sim exiting")
}
