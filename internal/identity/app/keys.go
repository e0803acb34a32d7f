package app

import (
	"fmt"
	"log/slog"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
)

// InitSigningKeys loads the configured RSA key pair, or generates a fresh one
// when none is configured. Generated material is logged base64-encoded so an
// operator can pin it via the environment and keep issued tokens valid across
// restarts.
func InitSigningKeys(cfg Config, logger *slog.Logger) (*jwtx.Codec, *jwtx.KeySet, error) {
	material, generated, err := jwtx.LoadOrGenerate(jwtx.KeyConfig{
		PublicKey:  cfg.RSAPublicKey,
		PrivateKey: cfg.RSAPrivateKey,
		KeyID:      cfg.RSAKeyID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}

	if generated {
		pub, err := material.EncodedPublicKey()
		if err != nil {
			return nil, nil, err
		}
		priv, err := material.EncodedPrivateKey()
		if err != nil {
			return nil, nil, err
		}
		logger.Warn("no signing key configured, generated an ephemeral pair; "+
			"tokens will not survive a restart unless these are pinned",
			"kid", material.KID(),
			"IDENTITY_RSA_PUBLIC_KEY", pub,
			"IDENTITY_RSA_PRIVATE_KEY", priv,
		)
	} else {
		logger.Info("signing keys loaded from configuration", "kid", material.KID())
	}

	signer, err := jwtx.NewSignerRS256(material)
	if err != nil {
		return nil, nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, err
	}

	codec := &jwtx.Codec{
		Signer:     signer,
		Verifier:   jwtx.NewVerifierRS256(keys, cfg.Issuer),
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	return codec, keys, nil
}
