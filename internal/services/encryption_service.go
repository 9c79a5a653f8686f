package services

import (
	"stillpoint/internal/crypto"
	"stillpoint/internal/models"
)

// EncryptionService wraps the cipher with domain-specific helpers so handlers
// never touch raw crypto.
type EncryptionService struct {
	cipher *crypto.Cipher
}

func NewEncryptionService(encryptionKey, blindIndexKey []byte) (*EncryptionService, error) {
	c, err := crypto.NewCipher(encryptionKey, blindIndexKey)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: c}, nil
}

// EncryptUser encrypts the email and fills its blind index before storage.
func (s *EncryptionService) EncryptUser(user *models.User) error {
	encrypted, err := s.cipher.Encrypt(user.Email)
	if err != nil {
		return err
	}
	user.EmailBlindIndex = s.cipher.BlindIndex(user.Email)
	user.Email = encrypted
	return nil
}

// DecryptUser restores the plaintext email after retrieval.
func (s *EncryptionService) DecryptUser(user *models.User) error {
	decrypted, err := s.cipher.Decrypt(user.Email)
	if err != nil {
		return err
	}
	user.Email = decrypted
	return nil
}

// EmailBlindIndex derives the lookup index for an email address.
func (s *EncryptionService) EmailBlindIndex(email string) string {
	return s.cipher.BlindIndex(email)
}

func (s *EncryptionService) EncryptJournal(entry *models.JournalEntry) error {
	encrypted, err := s.cipher.Encrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = encrypted
	return nil
}

func (s *EncryptionService) DecryptJournal(entry *models.JournalEntry) error {
	decrypted, err := s.cipher.Decrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = decrypted
	return nil
}

func (s *EncryptionService) EncryptInsight(in *models.Insight) error {
	encrypted, err := s.cipher.Encrypt(in.Content)
	if err != nil {
		return err
	}
	in.Content = encrypted
	return nil
}

func (s *EncryptionService) DecryptInsight(in *models.Insight) error {
	decrypted, err := s.cipher.Decrypt(in.Content)
	if err != nil {
		return err
	}
	in.Content = decrypted
	return nil
}
