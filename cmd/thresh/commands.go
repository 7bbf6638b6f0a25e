package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/sigma"
	"github.com/f3rmion/thresh/threshold"
	"github.com/f3rmion/thresh/vss"
)

const (
	publicFile       = "public.json"
	publicSharesFile = "public-shares.json"
	commitmentsFile  = "commitments.cbor"
)

func shareFile(index int) string {
	return fmt.Sprintf("share-%d.json", index)
}

func runKeygen(e *env, args []string) error {
	fs, configPath := newFlagSet("keygen")
	out := fs.StringP("out", "o", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := e.setup(*configPath); err != nil {
		return err
	}
	defer e.close()

	key, err := elgamal.GenerateKey(e.suite)
	if err != nil {
		return err
	}
	dist, err := threshold.DistributeKey(e.suite, key, e.cfg.Total, e.cfg.Threshold)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o700); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(*out, publicFile), dist.Public); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(*out, publicSharesFile), dist.PublicShares); err != nil {
		return err
	}
	commitments, err := vss.MarshalCommitments(e.suite.Group, dist.Commitments)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(*out, commitmentsFile), commitments); err != nil {
		return err
	}
	for _, sh := range dist.PrivateShares {
		if err := writeJSON(filepath.Join(*out, shareFile(sh.Index)), sh); err != nil {
			return err
		}
	}
	e.logger.Info("generated key",
		zap.String("system", e.cfg.System),
		zap.Int("threshold", e.cfg.Threshold),
		zap.Int("total", e.cfg.Total),
		zap.String("dir", *out))
	fmt.Fprintln(e.stdout, group.Hexify(dist.Public.Point()))
	return nil
}

func runEncrypt(e *env, args []string) error {
	fs, configPath := newFlagSet("encrypt")
	publicPath := fs.String("public", "", "group public key (JSON)")
	in := fs.StringP("in", "i", "", "plaintext file")
	out := fs.StringP("out", "o", "", "ciphertext file (CBOR)")
	scheme := fs.String("scheme", elgamal.Integrated.String(), "hybrid or integrated")
	proofPath := fs.String("proof", "", "also write a proof of encryption to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "public", "in", "out"); err != nil {
		return err
	}
	if err := e.setup(*configPath); err != nil {
		return err
	}
	defer e.close()

	var pub elgamal.PublicKey
	if err := readJSON(*publicPath, &pub); err != nil {
		return err
	}
	if err := e.sameGroup(pub.Group()); err != nil {
		return err
	}
	msg, err := os.ReadFile(*in)
	if err != nil {
		return err
	}

	var enc *elgamal.Encryption
	switch *scheme {
	case elgamal.Hybrid.String():
		enc, err = elgamal.EncryptHybrid(e.suite, &pub, msg)
	case elgamal.Integrated.String():
		enc, err = elgamal.EncryptIntegrated(e.suite, &pub, msg)
	default:
		return fmt.Errorf("%w: %q", elgamal.ErrSchemeMismatch, *scheme)
	}
	if err != nil {
		return err
	}
	data, err := enc.Ciphertext.Marshal(e.suite.Group)
	if err != nil {
		return err
	}
	if err := writeFile(*out, data); err != nil {
		return err
	}

	if *proofPath != "" {
		proof, err := elgamal.ProveEncryption(e.suite, enc.Ciphertext, enc.Randomness, nil)
		if err != nil {
			return err
		}
		data, err := proof.Marshal(e.suite.Group)
		if err != nil {
			return err
		}
		if err := writeFile(*proofPath, data); err != nil {
			return err
		}
	}
	e.logger.Debug("encrypted", zap.String("scheme", *scheme), zap.Int("bytes", len(msg)))
	return nil
}

func runPartial(e *env, args []string) error {
	fs, configPath := newFlagSet("partial")
	sharePath := fs.String("share", "", "trustee key share (JSON)")
	ctPath := fs.String("ciphertext", "", "ciphertext file (CBOR)")
	out := fs.StringP("out", "o", "", "partial decryptor file (CBOR)")
	commitmentsPath := fs.String("commitments", "", "check the share against the dealer's commitments first")
	proofPath := fs.String("proof", "", "refuse unless this proof of encryption verifies")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "share", "ciphertext", "out"); err != nil {
		return err
	}
	if err := e.setup(*configPath); err != nil {
		return err
	}
	defer e.close()
	g := e.suite.Group

	var share threshold.PrivateShare
	if err := readJSON(*sharePath, &share); err != nil {
		return err
	}
	if err := e.sameGroup(share.Group()); err != nil {
		return err
	}
	if *commitmentsPath != "" {
		data, err := os.ReadFile(*commitmentsPath)
		if err != nil {
			return err
		}
		commitments, err := vss.UnmarshalCommitments(g, data)
		if err != nil {
			return err
		}
		if err := share.Verify(commitments); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(*ctPath)
	if err != nil {
		return err
	}
	ct, err := elgamal.UnmarshalCiphertext(g, data)
	if err != nil {
		return err
	}
	if *proofPath != "" {
		if err := verifyEncryptionProof(e, ct, *proofPath); err != nil {
			return err
		}
	}

	pd, err := share.PartialDecrypt(e.suite, ct)
	if err != nil {
		return err
	}
	encoded, err := pd.Marshal(g)
	if err != nil {
		return err
	}
	e.logger.Info("partial decryptor written", zap.Int("trustee", pd.Index), zap.String("ciphertext", ct.ID()))
	return writeFile(*out, encoded)
}

func runCombine(e *env, args []string) error {
	fs, configPath := newFlagSet("combine")
	publicSharesPath := fs.String("public-shares", "", "trustees' public shares (JSON)")
	ctPath := fs.String("ciphertext", "", "ciphertext file (CBOR)")
	out := fs.StringP("out", "o", "", "plaintext file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "public-shares", "ciphertext"); err != nil {
		return err
	}
	if err := e.setup(*configPath); err != nil {
		return err
	}
	defer e.close()
	g := e.suite.Group

	var publicShares []*threshold.PublicShare
	if err := readJSON(*publicSharesPath, &publicShares); err != nil {
		return err
	}
	for _, ps := range publicShares {
		if err := e.sameGroup(ps.Group()); err != nil {
			return err
		}
	}
	data, err := os.ReadFile(*ctPath)
	if err != nil {
		return err
	}
	ct, err := elgamal.UnmarshalCiphertext(g, data)
	if err != nil {
		return err
	}

	partials := make([]*threshold.PartialDecryptor, 0, fs.NArg())
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pd, err := threshold.UnmarshalPartialDecryptor(g, data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		partials = append(partials, pd)
	}

	c, err := e.cfg.Combiner(e.suite)
	if err != nil {
		return err
	}
	plaintext, err := c.Decrypt(ct, partials, publicShares)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = e.stdout.Write(plaintext)
		return err
	}
	return writeFile(*out, plaintext)
}

func verifyEncryptionProof(e *env, ct *elgamal.Ciphertext, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	proof, err := sigma.UnmarshalProof(e.suite.Group, data)
	if err != nil {
		return err
	}
	ok, err := elgamal.VerifyEncryption(e.suite.Group, ct, proof, nil)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("proof of encryption does not verify for ciphertext %s", ct.ID())
	}
	return nil
}

func (e *env) sameGroup(g group.Group) error {
	if g == nil || g.Name() != e.suite.Group.Name() {
		name := "<none>"
		if g != nil {
			name = g.Name()
		}
		return fmt.Errorf("%w: file is for %q, configured system is %q",
			group.ErrGroupMismatch, name, e.suite.Group.Name())
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}
