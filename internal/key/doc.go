// Package key models the keyboard input delivered to the training engine.
//
// A key press arrives as an Event carrying three already-resolved facts:
//
//   - Code: the physical key identity. Printable keys use their uppercase
//     ASCII value ('A', '1', '!'); named keys (Tab, F1, Escape, ...) use
//     codes above 0x01000000 so they never collide with printable ones.
//   - Text: the lowercased text the key produced, possibly empty.
//   - Modifiers: the modifier bitset held during the press.
//
// The package does not read hardware state. Hosts translate their own key
// messages into Events.
package key
