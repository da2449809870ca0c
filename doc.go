// Package filekit is a small toolbox for personal file automation.
//
// Overview
//
// The work is done by three packages, one per tool:
//
//   - pdfrename: derive a date and subject from the text of a PDF and rename
//     the file to {date}_{title}.pdf
//   - stamp: set the creation date of a file from the date in its name
//   - youtube: validate YouTube links and download videos or audio with yt-dlp
//
// The filekit command in ./cli wires them to an interactive command line.
//
// Quick Start
//
// Rename the PDFs of a folder, previewing first:
//
//	p := pdfrename.NewProcessor("keywords.txt")
//	r := run.New(log, true) // dry run
//	sum, err := p.ProcessFolder(ctx, r, "/home/me/Scans", false)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(sum)
//
// Stamp creation dates:
//
//	e := stamp.NewEditor(false)
//	sum, err := e.ProcessFolder(ctx, run.New(log, false), "/home/me/Scans", true)
//
// Download the audio of a video:
//
//	d := youtube.NewDownloader(log)
//	res, err := d.Download(ctx, "https://youtu.be/dQw4w9WgXcQ", &youtube.DownloadOptions{
//		AudioOnly:   true,
//		AudioFormat: youtube.AudioM4A,
//	})
//
// Every batch reports a run.Summary of processed, skipped and failed files. A
// problem with one file never stops the batch.
package filekit
