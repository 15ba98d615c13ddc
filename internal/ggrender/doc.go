// Package ggrender implements imageview's Renderer on top of a gg.Context.
//
// Drawing is done by gg's software rasterizer, so the same Renderer serves
// the window (through ggcanvas) and headless PNG output. Images are decoded
// once into an Image handle that caches its tinted variants; fonts are
// parsed into a Font handle that caches one face per size.
package ggrender
