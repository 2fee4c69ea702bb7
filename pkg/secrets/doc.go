// Package secrets seals small string values for storage at rest.
//
// A Cipher is built from a 32-byte master key and an info label. The label
// goes through HKDF-SHA-256 so one master key can serve several purposes
// without key reuse; the derived key drives AES-256-GCM.
//
// Seal binds each ciphertext to an associated-data string (the storage key,
// for the session store) so a sealed value copied under another key fails to
// open. Output is base64 with the nonce prepended.
//
//	key, _ := secrets.GenerateKey()
//	c, err := secrets.NewCipher(key, "social/kvstore")
//	sealed, _ := c.Seal("auth_token", "tok1")
//	plain, err := c.Open("auth_token", sealed)
//
// EncodeKey / DecodeKey convert keys to and from the base64 form used in
// configuration.
package secrets
