// Package file stores uploaded files on the local disk or in S3.
//
// Both backends implement Storage. Uploads are sniffed for their MIME type
// rather than trusted by extension, and keys containing ".." are rejected.
//
//	store, err := file.New(ctx, cfg)
//	if err := file.ValidateMIMEType(fh, file.ImageTypes...); err != nil {
//		return err
//	}
//	f, err := store.Save(ctx, fh, "avatars/"+id+".png")
package file
