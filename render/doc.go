// Package render generates source code from parsed configuration documents.
//
// A [Renderer] turns a [conf.Document] into a [Bundle] of artifacts, one
// source file per section, and [Write] persists a bundle beneath an output
// directory. Renderers are looked up by target language name with [Lookup].
//
// Go output declares one typed constant per entry:
//
//	const (
//		Server_PORT int = 8080
//	)
//
// Java output declares one final class per section:
//
//	public final class Server {
//
//		public static final int PORT = 8080;
//	}
package render
