package cmd

import (
	"encoding/base64"

	"github.com/pandodao/blst"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "generate a blst key pair for oracle signing",
	Run: func(cmd *cobra.Command, args []string) {
		private := blst.GenerateKey()
		public := private.PublicKey()

		cmd.Println("blst private key:", private.String())
		cmd.Println("blst public key:", public.String())
	},
}

var signerCmd = &cobra.Command{
	Use:   "signer",
	Short: "manage oracle signers",
}

var signerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "register an oracle signer public key",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		signerID, _ := cmd.Flags().GetString("id")
		publicKey, _ := cmd.Flags().GetString("key")

		bts, err := base64.StdEncoding.DecodeString(publicKey)
		if err != nil {
			cmd.PrintErrln("invalid public key:", err)
			return
		}

		pub := blst.PublicKey{}
		if err := pub.FromBytes(bts); err != nil {
			cmd.PrintErrln("invalid public key:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		if err := provideOracleSignerStore(database).Save(ctx, signerID, publicKey); err != nil {
			cmd.PrintErrln("save signer error:", err)
			return
		}

		cmd.Println("signer registered:", signerID)
	},
}

var signerRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "remove an oracle signer",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		signerID, _ := cmd.Flags().GetString("id")

		database := provideDatabase()
		defer database.Close()

		if err := provideOracleSignerStore(database).Delete(ctx, signerID); err != nil {
			cmd.PrintErrln("remove signer error:", err)
			return
		}

		cmd.Println("signer removed:", signerID)
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(signerCmd)
	signerCmd.AddCommand(signerAddCmd)
	signerCmd.AddCommand(signerRemoveCmd)

	signerAddCmd.Flags().String("id", "", "signer id")
	signerAddCmd.Flags().String("key", "", "base64 blst public key")
	signerRemoveCmd.Flags().String("id", "", "signer id")
}
