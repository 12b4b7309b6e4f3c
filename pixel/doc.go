// Package pixel implements the bit-packed monochrome frame buffer used by SSD1309 style
// OLED controllers.
//
// The buffer is organised in pages: every byte covers 8 vertically stacked pixels of one
// column, with bit 0 being the topmost row of the page. The [PageImage] type is compatible
// with Go's native [image.Image] and [draw.Image] interfaces.
package pixel
