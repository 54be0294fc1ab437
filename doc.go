// Package qrgenmk builds the QRGenerator library for one target language with
// the Haxe cross-compiler. The build is an [mkcore.Project] with three goals:
//
//	out/             the output directory (removed by CLEAN)
//	out/build.tmp    the raw compiler output
//	out/QRGenerator… the library, optionally behind a header file
//
// The command line tool in cmd/qrgenmk is used from the root of the
// QRGenerator source tree:
//
//	QRGenerator$ qrgenmk --python PY
//	QRGenerator$ qrgenmk -js JS_BROWSER
//	QRGenerator$ qrgenmk CLEAN
//
// The supported language switches are --python, -cs, -hl, -java, -lua and -js.
// For -js the platform define selects the flavour: JS_BROWSER or JS_WSH.
package qrgenmk
