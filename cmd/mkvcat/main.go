// Command mkvcat catalogs media files by the metadata in their filenames.
package main

func main() {
	Execute()
}
