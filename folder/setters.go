package folder

// SetName returns an UpdateSetter that renames the folder.
func SetName(name string) UpdateSetter {
	return func(f *Folder) error {
		if name == "" {
			return ErrInvalidFolderName
		}
		f.Name = name
		return nil
	}
}
