package domain

const (
	BucketAvatars = "avatars"
	BucketResumes = "resumes"
)

// KnownBucket reports whether name is one of the storage buckets served publicly.
func KnownBucket(name string) bool {
	return name == BucketAvatars || name == BucketResumes
}
